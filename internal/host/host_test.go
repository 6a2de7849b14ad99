package host

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/platformbridge/internal/calendar"
	"github.com/edgard/platformbridge/internal/channel"
	"github.com/edgard/platformbridge/internal/frame"
	"github.com/edgard/platformbridge/internal/osinfo"
	"github.com/edgard/platformbridge/internal/plugin"
)

func newMessenger() *channel.Messenger {
	m := channel.NewMessenger()
	r := plugin.NewRegistry(m)
	plugin.RegisterAll(r, map[string]plugin.Plugin{
		"vertical_scrolling_calendar": calendar.New(osinfo.Static{FamilyName: "iOS", VersionString: "17.0"}),
	})
	return m
}

func readReplies(t *testing.T, out *bytes.Buffer) []*frame.Frame {
	t.Helper()
	var replies []*frame.Frame
	r := frame.NewReader(out)
	for {
		f, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			return replies
		}
		require.NoError(t, err)
		replies = append(replies, f)
	}
}

func TestServe(t *testing.T) {
	in := strings.NewReader("channel: vertical_scrolling_calendar\n" +
		"id: 1\n" +
		"data: {\"method\":\"getPlatformVersion\"}\n" +
		"\n" +
		"channel: vertical_scrolling_calendar\n" +
		"id: 2\n" +
		"data: {\"method\":\"other\",\"args\":[1,2,3]}\n" +
		"\n")
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), in, &out, newMessenger()))

	replies := readReplies(t, &out)
	require.Len(t, replies, 2)
	for i, reply := range replies {
		assert.Equal(t, calendar.ChannelName, reply.Channel)
		assert.Equal(t, []string{"1", "2"}[i], reply.ID)
		assert.Equal(t, `["iOS 17.0"]`, string(reply.Data))
	}
}

func TestServeUnknownChannel(t *testing.T) {
	in := strings.NewReader("channel: nope\ndata: {\"method\":\"x\"}\n\n")
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), in, &out, newMessenger()))

	replies := readReplies(t, &out)
	require.Len(t, replies, 1)
	assert.Equal(t, "nope", replies[0].Channel)
	assert.NotEmpty(t, replies[0].ID)

	_, err := channel.JSONMethodCodec{}.DecodeEnvelope(replies[0].Data)
	var envErr *channel.Error
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, channel.CodeNoHandler, envErr.Code)
}

func TestServeBadCall(t *testing.T) {
	in := strings.NewReader("channel: vertical_scrolling_calendar\nid: 9\ndata: not json\n\n")
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), in, &out, newMessenger()))

	replies := readReplies(t, &out)
	require.Len(t, replies, 1)

	_, err := channel.JSONMethodCodec{}.DecodeEnvelope(replies[0].Data)
	var envErr *channel.Error
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, channel.CodeBadCall, envErr.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, pr, io.Discard, newMessenger())
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeReplyDecodes(t *testing.T) {
	in := strings.NewReader("channel: vertical_scrolling_calendar\ndata: {\"method\":\"getPlatformVersion\"}\n\n")
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), in, &out, newMessenger()))

	replies := readReplies(t, &out)
	require.Len(t, replies, 1)

	raw, err := channel.JSONMethodCodec{}.DecodeEnvelope(replies[0].Data)
	require.NoError(t, err)

	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	assert.Equal(t, "iOS 17.0", s)
}
