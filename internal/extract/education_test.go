package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEducation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"section keyword",
			"Education: Master of Social Work from Howard University\nContact me today.",
			"master of social work from howard university",
		},
		{
			"verb led phrase",
			"She earned a Master of Arts in Counseling from NYU.",
			"Master of Arts in Counseling from NYU",
		},
		{
			"degree abbreviation",
			"Jane holds an MSW from the University of Maryland school of social work.",
			"MSW from the University of Maryland school of social work",
		},
		{
			"too short is skipped",
			"My highest degree: BA",
			"",
		},
		{"no signal", "I enjoy long walks.", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Education(tt.text))
		})
	}
}

func TestEducationCapsAtThree(t *testing.T) {
	text := strings.Join([]string{
		"Education: Master of Social Work from Howard University",
		"She earned a Master of Arts in Counseling from NYU.",
		"He completed a doctoral program at Georgetown University.",
		"Training: certificate in trauma-informed care practice",
	}, "\n")

	got := Education(text)
	assert.Len(t, strings.Split(got, "; "), 3)
}
