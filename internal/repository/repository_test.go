package repository

import (
	"testing"

	"github.com/Amieurramy/updated-back-main/internal/recsys"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToObservation(t *testing.T) {
	t.Parallel()

	user := primitive.NewObjectID()
	item := primitive.NewObjectID()

	tests := []struct {
		name      string
		userFound bool
		itemFound bool
		source    string
		want      recsys.Observation
	}{
		{
			name:      "resolved",
			userFound: true,
			itemFound: true,
			source:    recsys.SourceImputed,
			want:      recsys.Observation{UserID: user.Hex(), ItemID: item.Hex(), Rating: 4, Source: recsys.SourceImputed},
		},
		{
			name:      "missing source defaults to explicit",
			userFound: true,
			itemFound: true,
			want:      recsys.Observation{UserID: user.Hex(), ItemID: item.Hex(), Rating: 4, Source: recsys.SourceExplicit},
		},
		{
			name:      "deleted menu item",
			userFound: true,
			want:      recsys.Observation{UserID: user.Hex(), Rating: 4, Source: recsys.SourceExplicit},
		},
		{
			name:      "deleted user",
			itemFound: true,
			want:      recsys.Observation{ItemID: item.Hex(), Rating: 4, Source: recsys.SourceExplicit},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := toObservation(user, item, 4, tt.source, tt.userFound, tt.itemFound)
			if got != tt.want {
				t.Errorf("toObservation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToObservation_ZeroIDIsBroken(t *testing.T) {
	t.Parallel()

	got := toObservation(primitive.NilObjectID, primitive.NewObjectID(), 3, "", true, true)
	if got.UserID != "" {
		t.Errorf("UserID = %q, want empty for a nil reference", got.UserID)
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()
	got, err := parseID(id.Hex())
	if err != nil || got != id {
		t.Errorf("parseID(%q) = %v, %v; want %v", id.Hex(), got, err, id)
	}
	if _, err := parseID("not-an-id"); err == nil {
		t.Error("parseID(not-an-id) error = nil, want error")
	}
}
