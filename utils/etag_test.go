package utils

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	now := time.Now()

	first := GenerateETag(id, now)
	second := GenerateETag(id, now)
	if first != second {
		t.Fatalf("same inputs must yield the same tag")
	}
	if !strings.HasPrefix(first, `"`) || !strings.HasSuffix(first, `"`) {
		t.Fatalf("etag should be quoted, got %s", first)
	}

	if GenerateETag(id, now.Add(time.Second)) == first {
		t.Fatalf("different timestamps must yield different tags")
	}
	if GenerateETag(primitive.NewObjectID(), now) == first {
		t.Fatalf("different ids must yield different tags")
	}
}
