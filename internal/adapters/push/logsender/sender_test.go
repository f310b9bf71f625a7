package logsender

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/ports/push"
)

func TestSendMulticast_LogsAndSucceeds(t *testing.T) {
	var buf bytes.Buffer
	s := New(logger.New(logger.Options{Out: &buf}))

	res, err := s.SendMulticast(context.Background(), push.Message{
		Notification: push.Notification{Title: "New boarding form", Body: "Ana requested boarding"},
		Data:         push.Data{Type: "boarding_forms", ID: "b-1"},
		Tokens:       []string{"t1", "t2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Len(t, res.Results, 2)
	assert.Contains(t, buf.String(), "msg=\"push multicast\"")
	assert.Contains(t, buf.String(), "tokens=2")
}
