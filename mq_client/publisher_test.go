package mq_client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "private.U123.order", RoutingKey("private", "U123", "order"))
	assert.Equal(t, "private.demo-user-id.token_purchase", RoutingKey("private", "demo-user-id", "token_purchase"))
}
