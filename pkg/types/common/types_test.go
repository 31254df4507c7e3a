package common_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

func TestThreatLevel_Rank(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, common.ThreatLow.Rank())
	assert.Equal(t, 1, common.ThreatMedium.Rank())
	assert.Equal(t, 2, common.ThreatHigh.Rank())
	assert.Equal(t, -1, common.ThreatLevel("Critical").Rank())
	assert.True(t, common.ThreatHigh.Valid())
	assert.False(t, common.ThreatLevel("").Valid())
}

func TestSourceType_Valid(t *testing.T) {
	t.Parallel()
	for _, st := range common.AllSourceTypes {
		assert.True(t, st.Valid(), string(st))
	}
	assert.False(t, common.SourceType("rss").Valid())
}

func TestAllThreatTypes_ClosedSet(t *testing.T) {
	t.Parallel()
	require.Len(t, common.AllThreatTypes, 10)
	seen := make(map[common.ThreatType]bool, len(common.AllThreatTypes))
	for _, tt := range common.AllThreatTypes {
		assert.False(t, seen[tt], "duplicate threat type %s", tt)
		seen[tt] = true
	}
}

func TestID_Validate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, common.NewID().Validate())
	assert.Error(t, common.ID("").Validate())
	assert.Error(t, common.ID("not-a-uuid").Validate())
}

func TestTimestamp_JSONRoundTrip(t *testing.T) {
	t.Parallel()
	orig := common.Timestamp(time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC))
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded common.Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, time.Time(orig).Equal(time.Time(decoded)))
}

func TestAPIResponse(t *testing.T) {
	t.Parallel()
	ok := common.NewSuccessResponse([]string{"a", "b"})
	assert.True(t, ok.Success)
	assert.Nil(t, ok.Error)

	bad := common.NewErrorResponse("COMMON_003", "not found")
	assert.False(t, bad.Success)
	require.NotNil(t, bad.Error)
	assert.Equal(t, "COMMON_003", bad.Error.Code)
}
