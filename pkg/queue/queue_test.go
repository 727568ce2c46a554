package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/dandelion/pkg/queue"
)

// TestNewEventID 测试消息 ID 非空且按时间大致有序.
func TestNewEventID(t *testing.T) {
	first := queue.NewEventID()
	if first == "" {
		t.Fatal("NewEventID returned empty string")
	}

	time.Sleep(2 * time.Millisecond)

	second := queue.NewEventID()
	if second <= first {
		t.Errorf("later ULID %q not greater than earlier %q", second, first)
	}
}

// TestEncodeDecodeRoundTrip 测试信封编码后能解回相同内容.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	env := queue.Message[queue.FileStoredPayload]{
		Header: queue.NewEventHeader(queue.TopicFileStored, queue.WithProducer("dandelion"), queue.WithTraceID("trace-1")),
		Payload: queue.FileStoredPayload{
			File:    queue.FileRef{ID: 42, FileName: "report.pdf", Size: 1024, MimeType: "application/pdf", Checksum: "abc123"},
			Comment: "quarterly report",
			Meta:    map[string]string{"page_count": "12"},
		},
	}

	data, err := queue.Encode(env)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := queue.Decode[queue.FileStoredPayload](data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Header.Topic != queue.TopicFileStored {
		t.Errorf("Topic = %q, want %q", got.Header.Topic, queue.TopicFileStored)
	}

	if got.Header.Producer != "dandelion" || got.Header.TraceID != "trace-1" {
		t.Errorf("Header = %+v, want producer dandelion and trace-1", got.Header)
	}

	if got.Payload.File.ID != 42 || got.Payload.File.FileName != "report.pdf" {
		t.Errorf("Payload.File = %+v", got.Payload.File)
	}

	if got.Payload.Meta["page_count"] != "12" {
		t.Errorf("Payload.Meta = %v", got.Payload.Meta)
	}
}

// TestNewWatermillMessageMetadata 测试消息元数据齐全.
func TestNewWatermillMessageMetadata(t *testing.T) {
	msg, err := queue.NewWatermillMessage(queue.TopicFileDeleted, queue.FileDeletedPayload{
		File:        queue.FileRef{ID: 7, FileName: "old.txt"},
		BlobRemoved: true,
	}, queue.WithProducer("dandelion"))
	if err != nil {
		t.Fatalf("NewWatermillMessage: %v", err)
	}

	if msg.UUID == "" {
		t.Error("message UUID is empty")
	}

	if got := msg.Metadata.Get("topic"); got != queue.TopicFileDeleted {
		t.Errorf("metadata topic = %q, want %q", got, queue.TopicFileDeleted)
	}

	if got := msg.Metadata.Get("producer"); got != "dandelion" {
		t.Errorf("metadata producer = %q, want %q", got, "dandelion")
	}

	if got := msg.Metadata.Get("version"); got != queue.PayloadVersionV1 {
		t.Errorf("metadata version = %q, want %q", got, queue.PayloadVersionV1)
	}

	if msg.Metadata.Get("occurred_at") == "" {
		t.Error("metadata occurred_at is empty")
	}

	env, err := queue.ParseWatermillMessage[queue.FileDeletedPayload](msg)
	if err != nil {
		t.Fatalf("parse envelope: %v", err)
	}

	if env.Header.Topic != queue.TopicFileDeleted {
		t.Errorf("envelope topic = %q, want %q", env.Header.Topic, queue.TopicFileDeleted)
	}

	if !env.Payload.BlobRemoved {
		t.Error("BlobRemoved lost in round trip")
	}
}

// TestPublishSubscribeRoundTrip 测试经进程内 PubSub 的完整发布订阅链路.
func TestPublishSubscribeRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch, err := pubSub.Subscribe(ctx, queue.TopicFileStored)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	want := queue.FileStoredPayload{
		File: queue.FileRef{ID: 9, FileName: "photo.jpg", Size: 2048, MimeType: "image/jpeg"},
		Meta: map[string]string{"resolution": "800x600"},
	}

	if err := queue.PublishFileStored(pubSub, want, queue.WithProducer("dandelion")); err != nil {
		t.Fatalf("PublishFileStored: %v", err)
	}

	select {
	case msg := <-ch:
		env, err := queue.ParseFileStored(msg)
		if err != nil {
			t.Fatalf("ParseFileStored: %v", err)
		}

		msg.Ack()

		if env.Payload.File.FileName != "photo.jpg" || env.Payload.Meta["resolution"] != "800x600" {
			t.Errorf("payload = %+v", env.Payload)
		}
	case <-ctx.Done():
		t.Fatal("no message received before timeout")
	}
}

// TestPublishNilPublisher 测试 Publisher 缺失时返回错误而不是 panic.
func TestPublishNilPublisher(t *testing.T) {
	err := queue.PublishUserRegistered(nil, queue.UserRegisteredPayload{UserID: 1, Username: "alice"})
	if err == nil {
		t.Error("publish with nil publisher succeeded, want error")
	}
}
