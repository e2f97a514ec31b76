package celcat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEventDetails(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		elements []Element
		want     Details
	}{
		{
			name: "empty",
			want: Details{},
		},
		{
			name: "unknown_and_time_ignored",
			elements: []Element{
				{Label: LabelTime, Content: strPtr("08:00")},
				{Label: LabelUnknown, Content: strPtr("?")},
				{Label: LabelGrades, Content: strPtr("12/20")},
			},
			want: Details{},
		},
		{
			name: "last_occurrence_wins",
			elements: []Element{
				{Label: LabelRoom, Content: strPtr("A101")},
				{Label: LabelRoom, Content: strPtr("B202")},
				{Label: LabelTeacher, Content: strPtr("DUPONT")},
			},
			want: Details{Room: strPtr("B202"), Teacher: strPtr("DUPONT")},
		},
		{
			name: "null_content_clears",
			elements: []Element{
				{Label: LabelCategory, Content: strPtr("CM")},
				{Label: LabelCategory},
			},
			want: Details{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := &Event{Elements: tt.elements}
			assert.Equal(t, tt.want, e.Details())
		})
	}
}

func TestLabelUnmarshal(t *testing.T) {
	t.Parallel()
	tests := map[string]Label{
		`"Time"`:       LabelTime,
		`"Catégorie"`:  LabelCategory,
		`"Matière"`:    LabelModule,
		`"Salle"`:      LabelRoom,
		`"Enseignant"`: LabelTeacher,
		`"Notes"`:      LabelGrades,
		`"Name"`:       LabelName,
		`"Groupe"`:     LabelUnknown,
	}
	for raw, want := range tests {
		var l Label
		require.NoError(t, json.Unmarshal([]byte(raw), &l), raw)
		assert.Equal(t, want, l, raw)
	}

	var l Label
	assert.Error(t, json.Unmarshal([]byte(`42`), &l))
}

func TestEntityTypeUnmarshal(t *testing.T) {
	t.Parallel()

	var e EntityType
	require.NoError(t, json.Unmarshal([]byte(`0`), &e))
	_, ok := e.Resource()
	assert.False(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`101`), &e))
	rt, ok := e.Resource()
	assert.True(t, ok)
	assert.Equal(t, ResourceTeacher, rt)

	require.NoError(t, json.Unmarshal([]byte(`null`), &e))
	assert.Equal(t, EntityUnknown, e)

	assert.Error(t, json.Unmarshal([]byte(`99`), &e))
	assert.Error(t, json.Unmarshal([]byte(`"bar"`), &e))
}

func TestResourceType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "102", ResourceRoom.String())
	assert.True(t, ResourceGroup.Valid())
	assert.False(t, ResourceType(105).Valid())
}
