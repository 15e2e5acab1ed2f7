package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GoArmGo/randimg/internal/core/ports/mocks"
	"github.com/GoArmGo/randimg/internal/domain"
	"github.com/GoArmGo/randimg/internal/logger"
	"github.com/GoArmGo/randimg/internal/messaging/payloads"
)

func TestFeed_DrainKeepsOrder(t *testing.T) {
	feed := NewFeed(0)
	ctx := context.Background()

	require.NoError(t, feed.Notify(ctx, domain.Success("one")))
	require.NoError(t, feed.Notify(ctx, domain.Failure("two")))
	assert.Equal(t, 2, feed.Len())

	items := feed.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "one", items[0].Message)
	assert.Equal(t, domain.NotificationError, items[1].Level)

	assert.Empty(t, feed.Drain())
	assert.Equal(t, 0, feed.Len())
}

func TestFeed_DropsOldest(t *testing.T) {
	feed := NewFeed(2)
	ctx := context.Background()

	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, feed.Notify(ctx, domain.Success(msg)))
	}

	items := feed.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Message)
	assert.Equal(t, "c", items[1].Message)
}

func TestLog_WritesNotification(t *testing.T) {
	var buf bytes.Buffer
	n := NewLog(logger.NewSlog(logger.SlogConfig{Format: "text", Output: &buf}))

	require.NoError(t, n.Notify(context.Background(), domain.Failure("No Image Data Found")))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `message="No Image Data Found"`)
}

type recordingPublisher struct {
	got []payloads.NotificationPayload
	err error
}

func (p *recordingPublisher) PublishNotification(_ context.Context, payload payloads.NotificationPayload) error {
	p.got = append(p.got, payload)
	return p.err
}

func TestQueue_PublishesPayload(t *testing.T) {
	pub := &recordingPublisher{}
	n := domain.Success("Link Copied to Clipboard")

	require.NoError(t, NewQueue(pub).Notify(context.Background(), n))
	require.Len(t, pub.got, 1)
	assert.Equal(t, n.ID.String(), pub.got[0].ID)
	assert.Equal(t, "success", pub.got[0].Level)
	assert.Equal(t, "Link Copied to Clipboard", pub.got[0].Message)
}

func TestFanout_ContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mocks.NewMockNotifier(ctrl)
	feed := NewFeed(0)
	n := domain.Success("Image Downloaded Successfully")

	failing.EXPECT().Notify(gomock.Any(), n).Return(errors.New("broker down"))

	err := NewFanout(failing, feed).Notify(context.Background(), n)
	assert.EqualError(t, err, "broker down")
	assert.Equal(t, 1, feed.Len())
}
