package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

type tagged struct {
	ID       uint   `gorm:"primaryKey" json:"id,omitempty"`
	Label    string `json:"label"`
	Internal string `json:"-"`
	Plain    string
}

func TestJSONName(t *testing.T) {
	s, err := schema.Parse(&tagged{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	testCases := []struct {
		field        string
		expectedName string
		expectedOK   bool
	}{
		{field: "ID", expectedName: "id", expectedOK: true},
		{field: "Label", expectedName: "label", expectedOK: true},
		{field: "Internal", expectedName: "", expectedOK: false},
		{field: "Plain", expectedName: "Plain", expectedOK: true},
	}

	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			name, ok := JSONName(s.LookUpField(tc.field))
			assert.Equal(t, tc.expectedName, name)
			assert.Equal(t, tc.expectedOK, ok)
		})
	}
}
