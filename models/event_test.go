package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusPending},
		{StatusRejected, StatusPending},
	}
	for _, tc := range allowed {
		if !CanTransition(tc[0], tc[1]) {
			t.Fatalf("expected %s -> %s to be allowed", tc[0], tc[1])
		}
	}

	forbidden := [][2]string{
		{StatusApproved, StatusRejected},
		{StatusRejected, StatusApproved},
		{StatusPending, StatusPending},
		{StatusApproved, StatusApproved},
		{"bogus", StatusApproved},
		{StatusPending, "bogus"},
	}
	for _, tc := range forbidden {
		if CanTransition(tc[0], tc[1]) {
			t.Fatalf("expected %s -> %s to be forbidden", tc[0], tc[1])
		}
	}
}

func TestFindComment(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	event := Event{
		Comments: []Comment{
			{ID: first, Text: "great initiative"},
			{ID: second, Text: "count me in"},
		},
	}

	if got := event.FindComment(second); got == nil || got.Text != "count me in" {
		t.Fatalf("expected to find second comment, got %+v", got)
	}
	if got := event.FindComment(primitive.NewObjectID()); got != nil {
		t.Fatalf("expected nil for unknown comment id")
	}
}

func TestHasLiked(t *testing.T) {
	liker := primitive.NewObjectID()
	event := Event{LikedBy: []primitive.ObjectID{liker}}

	if !event.HasLiked(liker) {
		t.Fatalf("expected liker to be in the set")
	}
	if event.HasLiked(primitive.NewObjectID()) {
		t.Fatalf("expected unknown user to be absent")
	}
}
