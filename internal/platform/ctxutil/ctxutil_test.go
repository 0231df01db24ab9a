package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestData(t *testing.T) {
	if got := UserID(context.Background()); got != uuid.Nil {
		t.Fatalf("expected nil user, got %s", got)
	}
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id})
	if got := UserID(ctx); got != id {
		t.Fatalf("UserID: got %s want %s", got, id)
	}
}

func TestLogFields(t *testing.T) {
	if f := LogFields(context.Background()); f != nil {
		t.Fatalf("expected no fields, got %v", f)
	}
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	f := LogFields(ctx)
	if len(f) != 4 || f[1] != "t1" || f[3] != "r1" {
		t.Fatalf("unexpected fields: %v", f)
	}
}
