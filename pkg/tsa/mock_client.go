package tsa

type MockClient struct {
	err     error
	token   []byte
	digests []string
}

func NewMockClient() *MockClient {
	return &MockClient{token: []byte("mock-token")}
}

func (c *MockClient) SetError(err error) {
	c.err = err
}

func (c *MockClient) SetToken(token []byte) {
	c.token = token
}

// Digests returns the digests GetToken was called with, in order.
func (c *MockClient) Digests() []string {
	return c.digests
}

func (c *MockClient) GetToken(digest string) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}

	c.digests = append(c.digests, digest)
	return c.token, nil
}
