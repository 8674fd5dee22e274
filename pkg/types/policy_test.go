// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestPolicyRecordGetSet(t *testing.T) {
	var r PolicyRecord
	for _, f := range AllFields {
		require.True(t, r.Set(f, string(f)+"-value"), f)
	}
	for _, f := range AllFields {
		assert.Equal(t, string(f)+"-value", r.Get(f))
	}
	assert.Equal(t, len(AllFields), r.Filled())

	assert.False(t, r.Set(Field("vin"), "x"))
	assert.Equal(t, "", r.Get(Field("vin")))
}

func TestPolicyRecordMapHasEveryField(t *testing.T) {
	var r PolicyRecord
	r.PolicyNumber = "ABC-123"

	m := r.Map()
	assert.Len(t, m, 9)
	for _, f := range AllFields {
		_, ok := m[f]
		assert.True(t, ok, "missing %s", f)
	}
	assert.Equal(t, "ABC-123", m[FieldPolicyNumber])
	assert.Equal(t, 1, r.Filled())
}

func TestPolicyRecordSerializesEmptyFields(t *testing.T) {
	var r PolicyRecord

	data, err := json.Marshal(r)
	require.NoError(t, err)
	var asJSON map[string]string
	require.NoError(t, json.Unmarshal(data, &asJSON))
	assert.Len(t, asJSON, len(AllFields))

	data, err = yaml.Marshal(r)
	require.NoError(t, err)
	var asYAML map[string]string
	require.NoError(t, yaml.Unmarshal(data, &asYAML))
	assert.Len(t, asYAML, len(AllFields))

	for _, f := range AllFields {
		assert.Contains(t, asJSON, string(f))
		assert.Contains(t, asYAML, string(f))
	}
}

func TestFieldValid(t *testing.T) {
	assert.True(t, FieldPremiumAmount.Valid())
	assert.False(t, Field("premium").Valid())
}
