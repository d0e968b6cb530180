package broker

import "context"

// DisabledClient rejects every publish. It is used when broker.driver is "none".
type DisabledClient struct{}

var _ Client = DisabledClient{}

// NewDisabledClient creates a DisabledClient
func NewDisabledClient() DisabledClient {
	return DisabledClient{}
}

// Publish always returns ErrBrokerDisabled
func (DisabledClient) Publish(context.Context, string, []byte) error {
	return ErrBrokerDisabled
}

// IsConnected always returns false
func (DisabledClient) IsConnected() bool {
	return false
}

// Driver returns DriverNone
func (DisabledClient) Driver() string {
	return DriverNone
}

// Close does nothing
func (DisabledClient) Close(context.Context) error {
	return nil
}
