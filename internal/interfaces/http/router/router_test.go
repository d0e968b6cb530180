package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, DefaultBasePath, r.basePath)
	assert.Empty(t, r.registrars)
}

func TestRouterWithBasePath(t *testing.T) {
	r := NewRouter(gin.New(), WithBasePath("/loja/api"))

	assert.Equal(t, "/loja/api", r.basePath)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	products := NewDomainGroup("catalog", "/produtos")
	products.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "list")
	})
	products.GET("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})

	orders := NewDomainGroup("order", "/pedido")
	orders.POST("", func(c *gin.Context) {
		c.String(http.StatusOK, "placed")
	})

	r.Register(products).Register(orders).Setup()

	w := serve(engine, http.MethodGet, "/api/produtos")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "list", w.Body.String())

	w = serve(engine, http.MethodGet, "/api/produtos/caixa-azul")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "caixa-azul", w.Body.String())

	w = serve(engine, http.MethodPost, "/api/pedido")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "placed", w.Body.String())

	w = serve(engine, http.MethodGet, "/api/pedido")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Header("X-API", "yes")
		c.Next()
	})
	g := NewDomainGroup("test", "/test")
	g.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(g).Setup()

	assert.Equal(t, "yes", serve(engine, http.MethodGet, "/api/test/ping").Header().Get("X-API"))
	assert.Empty(t, serve(engine, http.MethodGet, "/health").Header().Get("X-API"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/produtos")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/produtos", g.Prefix())
	})

	t.Run("registers arbitrary methods", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Handle(http.MethodPut, "/items/:id", func(c *gin.Context) {
			c.String(http.StatusOK, "updated")
		})
		g.RegisterRoutes(engine.Group("/api"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPut, "/api/test/items/1").Code)
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		g.RegisterRoutes(engine.Group("/api"))

		w := serve(engine, http.MethodGet, "/api/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("system", "/system")
		g.Group("info", "/info").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "info")
		})
		g.RegisterRoutes(engine.Group("/api"))

		w := serve(engine, http.MethodGet, "/api/system/info")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "info", w.Body.String())
	})
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("test", "/test")
	g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		POST("/b", func(c *gin.Context) { c.String(http.StatusOK, "b") })

	r.Register(g).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/test/a").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/test/b").Code)
}
