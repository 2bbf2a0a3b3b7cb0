package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

func TestDescriptor_BuildFilter_Defaults(t *testing.T) {
	millID := id.New()

	f, err := testDescriptor.BuildFilter(millID, ListQuery{})
	require.NoError(t, err)

	assert.Equal(t, millID, f.MillID)
	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, "date", f.SortColumn)
	assert.True(t, f.SortDesc)
	assert.Nil(t, f.Fields)
	assert.Equal(t, 0, f.Offset())
}

func TestDescriptor_BuildFilter(t *testing.T) {
	f, err := testDescriptor.BuildFilter(id.New(), ListQuery{
		Page:      3,
		Limit:     20,
		Search:    "  acme ",
		Filters:   map[string]string{"dealNumber": "D-1", "unknown": "x"},
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		SortBy:    "qty",
		SortOrder: "ASC",
	})
	require.NoError(t, err)

	assert.Equal(t, "acme", f.Search)
	assert.Equal(t, map[string]string{"deal_number": "D-1"}, f.Fields)
	assert.Equal(t, "qty", f.SortColumn)
	assert.False(t, f.SortDesc)
	assert.Equal(t, 40, f.Offset())
	require.NotNil(t, f.DateRange.Start)
	assert.Equal(t, "2024-03-01", types.FormatDate(*f.DateRange.Start))
}

func TestDescriptor_BuildFilter_Errors(t *testing.T) {
	tests := []struct {
		name  string
		q     ListQuery
		field string
	}{
		{"negative page", ListQuery{Page: -1}, "page"},
		{"limit too large", ListQuery{Limit: MaxLimit + 1}, "limit"},
		{"negative limit", ListQuery{Limit: -5}, "limit"},
		{"bad date", ListQuery{StartDate: "01/03/2024"}, "startDate"},
		{"inverted range", ListQuery{StartDate: "2024-03-05", EndDate: "2024-03-01"}, "startDate"},
		{"unknown sort", ListQuery{SortBy: "remarks"}, "sortBy"},
		{"bad order", ListQuery{SortOrder: "up"}, "sortOrder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testDescriptor.BuildFilter(id.New(), tt.q)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestDescriptor_BuildExportFilter(t *testing.T) {
	f, err := testDescriptor.BuildExportFilter(id.New(), ListQuery{Page: 4, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxExportRows, f.Limit)
}

func TestDescriptor_Validate(t *testing.T) {
	require.NoError(t, testDescriptor.Validate())

	bad := *testDescriptor
	bad.DefaultSort = "nope"
	assert.Error(t, bad.Validate())

	bad = *testDescriptor
	bad.Filters = []FilterField{{Param: "page", Column: "page"}}
	assert.Error(t, bad.Validate())
}

func TestDescriptor_Normalize(t *testing.T) {
	s := testDescriptor.Normalize(Summary{"totalQty": types.MustMeasure("1.239"), "stray": types.NewMeasure(1)})

	assert.Len(t, s, 2)
	assert.Equal(t, "1.24", s["totalQty"].String())
	assert.True(t, s[TotalEntriesKey].IsZero())
}

func TestListResult_TotalPages(t *testing.T) {
	assert.Equal(t, 0, ListResult[int]{Total: 0, Limit: 10}.TotalPages())
	assert.Equal(t, 1, ListResult[int]{Total: 10, Limit: 10}.TotalPages())
	assert.Equal(t, 2, ListResult[int]{Total: 11, Limit: 10}.TotalPages())
}
