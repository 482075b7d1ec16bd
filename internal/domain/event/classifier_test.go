package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestInferType(t *testing.T) {
	tests := []struct {
		title       string
		description *string
		expected    string
	}{
		{"Morning Yoga Flow", nil, TypeMeditation},
		{"Demo Day Showcase", nil, TypeDemoDay},
		{"Demo Day Workshop Recap", nil, TypeDemoDay},
		{"Solidity Workshop", nil, TypeWorkshop},
		{"Builders Meetup", nil, TypeMeetup},
		{"Network State Conference 2025", nil, TypeConference},
		{"Cacao Ceremony", nil, TypeCeremony},
		{"Fireside Chat with Founders", nil, TypeDiscussion},
		{"Movie Night", strPtr("We will watch a documentary"), TypeScreening},
		{"Deep Work Block", nil, TypeDeepwork},
		{"Sunrise Run", nil, TypeSports},
		{"Community Dinner", nil, TypeSocial},
		{"Residents Town Hall", nil, TypeForum},
		{"Pop-Up Market", nil, TypePopUp},
		{"Untitled gathering", nil, DefaultType},
		{"Gathering", strPtr("An evening HACKATHON for residents"), TypeWorkshop},
		{"", nil, DefaultType},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferType(tt.title, tt.description))
		})
	}
}

func TestInferType_WordBoundaries(t *testing.T) {
	// words are matched whole, not as substrings
	assert.Equal(t, TypeSocial, InferType("Sunday Brunch", nil))
	assert.Equal(t, DefaultType, InferType("Talkative parrots", nil))
}
