package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRecord struct {
	Title string `json:"title" validate:"required"`
	Name  string `json:"name" validate:"required,min=3"`
	Likes int    `json:"likes" validate:"min=0"`
	Note  string `json:"-"`
}

func TestValidatorStruct(t *testing.T) {
	testCases := []struct {
		name    string
		record  testRecord
		valid   bool
		wantMsg string
	}{
		{
			name:   "valid record",
			record: testRecord{Title: "title", Name: "root"},
			valid:  true,
		},
		{
			name:    "missing title",
			record:  testRecord{Name: "root"},
			wantMsg: "Record validation failed: title: Path `title` is required.",
		},
		{
			name:    "short name",
			record:  testRecord{Title: "title", Name: "a"},
			wantMsg: "Record validation failed: name: Path `name` (`a`) is shorter than the minimum allowed length (3).",
		},
		{
			name:    "negative likes",
			record:  testRecord{Title: "title", Name: "root", Likes: -1},
			wantMsg: "Record validation failed: likes: Path `likes` (-1) is less than minimum allowed value (0).",
		},
		{
			name:    "fields reported in declaration order",
			record:  testRecord{Name: "a"},
			wantMsg: "Record validation failed: title: Path `title` is required., name: Path `name` (`a`) is shorter than the minimum allowed length (3).",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator("Record")
			v.Struct(tc.record)
			assert.Equal(t, tc.valid, v.Valid())

			if !tc.valid {
				err := v.ValidationError()
				assert.EqualError(t, err, tc.wantMsg)
				assert.True(t, errors.As(err, &ValidationError{}))
			}
		})
	}
}

func TestValidatorCheck(t *testing.T) {
	v := NewValidator("User")
	v.Check(false, "password", MinLengthMessage("password", nil, 3))
	v.Check(false, "password", "ignored, first message wins")
	v.Check(true, "username", "never recorded")

	assert.False(t, v.Valid())
	assert.Len(t, v.Errors, 1)
	assert.EqualError(t, v.ValidationError(), "User validation failed: password: Path `password` is shorter than the minimum allowed length (3).")
}

func TestParseID(t *testing.T) {
	_, err := ParseID("5a3d9c7e")
	assert.ErrorIs(t, err, ErrMalformedID)

	id, err := ParseID("6b0f5c7e-3d51-4f4c-9d0e-1c2a3b4c5d6e")
	assert.NoError(t, err)
	assert.Equal(t, "6b0f5c7e-3d51-4f4c-9d0e-1c2a3b4c5d6e", id.String())
}
