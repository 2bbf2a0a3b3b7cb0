package dto

import (
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/types"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, Register(v))
	return v
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name               string
		page, limit        int
		total              int64
		totalPages         int
		hasPrev, hasNext   bool
		prevPage, nextPage *int
	}{
		{"empty", 1, 10, 0, 0, false, false, nil, nil},
		{"single page", 1, 10, 7, 1, false, false, nil, nil},
		{"first of three", 1, 10, 25, 3, false, true, nil, intPtr(2)},
		{"middle", 2, 10, 25, 3, true, true, intPtr(1), intPtr(3)},
		{"last", 3, 10, 25, 3, true, false, intPtr(2), nil},
		{"past the end", 5, 10, 25, 3, true, false, intPtr(4), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasPrev, p.HasPrevPage)
			assert.Equal(t, tt.hasNext, p.HasNextPage)
			assert.Equal(t, tt.prevPage, p.PrevPage)
			assert.Equal(t, tt.nextPage, p.NextPage)
		})
	}
}

func intPtr(i int) *int { return &i }

func ptr[T any](v T) *T { return &v }

func TestValidation_MeasureBounds(t *testing.T) {
	v := newValidator(t)

	ok := CreateRicePurchaseRequest{Date: "2024-03-01", RiceQty: types.NewMeasure(12.5)}
	assert.NoError(t, v.Struct(ok))

	bad := CreateRicePurchaseRequest{Date: "2024-03-01", RiceQty: types.NewMeasure(-1)}
	err := v.Struct(bad)
	require.Error(t, err)

	appErr := BindingError(err, "invalid request")
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "riceQty", appErr.Details["field"])
}

func TestValidation_ColumnLimits(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		req   any
		field string
	}{
		{"rice qty", CreateRicePurchaseRequest{Date: "2024-03-01", RiceQty: types.NewMeasure(1e16)}, "riceQty"},
		{"rate", CreateRicePurchaseRequest{Date: "2024-03-01", Rate: types.NewMeasure(1e20)}, "rate"},
		{"gunny count", CreateRiceInwardRequest{Date: "2024-03-01", GunnyNew: 3000000000}, "gunnyNew"},
		{"milling hours", CreateDailyMillingRequest{Date: "2024-03-01", MillingHours: types.NewMeasure(25)}, "millingHours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			require.Error(t, err)
			appErr := BindingError(err, "invalid request")
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}

	atLimit := CreateRicePurchaseRequest{Date: "2024-03-01", RiceQty: types.MustMeasure("999999999999999")}
	assert.NoError(t, v.Struct(atLimit))

	upd := UpdateRicePurchaseRequest{Brokerage: ptr(types.NewMeasure(1e17))}
	err := v.Struct(upd)
	require.Error(t, err)
	assert.Contains(t, BindingError(err, "invalid request").Message, "must be between 0 and")
}

func TestValidation_DateFormat(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(CreateDailyMillingRequest{Date: "01/03/2024"})
	require.Error(t, err)
	appErr := BindingError(err, "invalid request")
	assert.Equal(t, "date", appErr.Details["field"])
	assert.Contains(t, appErr.Message, "YYYY-MM-DD")

	assert.Error(t, v.Struct(CreateDailyMillingRequest{}))
}

func TestValidation_NotBlank(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(CreateOtherPurchaseRequest{Date: "2024-03-01", ItemName: "   "})
	require.Error(t, err)
	appErr := BindingError(err, "invalid request")
	assert.Equal(t, "itemName", appErr.Details["field"])
}

func TestValidation_PaymentMode(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(CreateFinancialPaymentRequest{Date: "2024-03-01", PaymentMode: "upi"}))
	assert.Error(t, v.Struct(CreateFinancialPaymentRequest{Date: "2024-03-01", PaymentMode: "barter"}))
}

func TestValidation_SortOrder(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(ListQueryRequest{SortOrder: "DESC"}))
	assert.Error(t, v.Struct(ListQueryRequest{SortOrder: "sideways"}))
}

func TestBulkDeleteRequest_Validation(t *testing.T) {
	v := newValidator(t)

	assert.Error(t, v.Struct(BulkDeleteRequest{}))
	assert.Error(t, v.Struct(BulkDeleteRequest{IDs: []string{"nope"}}))
	assert.NoError(t, v.Struct(BulkDeleteRequest{IDs: []string{"0190b2a4-6d3e-7c1a-9f00-000000000001"}}))
}

func TestCreateRiceInwardRequest_ToEntity(t *testing.T) {
	req := CreateRiceInwardRequest{
		Date:        "2024-03-01",
		TruckNumber: "CG04 1234",
		GrossWeight: types.NewMeasure(100),
		TareWeight:  types.NewMeasure(20),
	}
	e, err := req.ToEntity()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", types.FormatDate(e.Date))
	assert.Equal(t, "CG04 1234", e.TruckNumber)
	assert.True(t, e.NetWeight.IsZero())

	_, err = CreateRiceInwardRequest{Date: "bad"}.ToEntity()
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))
}

func TestUpdateRiceInwardRequest_ApplyTo(t *testing.T) {
	e, err := CreateRiceInwardRequest{
		Date:        "2024-03-01",
		PartyName:   "Sharma",
		GrossWeight: types.NewMeasure(100),
		TareWeight:  types.NewMeasure(20),
		NetWeight:   types.NewMeasure(80),
	}.ToEntity()
	require.NoError(t, err)

	party := "Verma"
	gross := types.NewMeasure(120)
	require.NoError(t, UpdateRiceInwardRequest{PartyName: &party, GrossWeight: &gross}.ApplyTo(e))

	assert.Equal(t, "Verma", e.PartyName)
	assert.True(t, e.GrossWeight.Equal(gross))
	assert.True(t, e.NetWeight.IsZero(), "net weight is cleared so it is derived again")
	assert.Equal(t, "2024-03-01", types.FormatDate(e.Date))

	bad := "2024-13-01"
	assert.Error(t, UpdateRiceInwardRequest{Date: &bad}.ApplyTo(e))
}

func TestCreateUserRequest_ToAuthRequest(t *testing.T) {
	req := CreateUserRequest{Email: "a@b.in", Password: "secret123", Name: "A", Role: "staff"}
	out, err := req.ToAuthRequest()
	require.NoError(t, err)
	assert.Empty(t, out.MillIDs)

	req.MillIDs = []string{"x"}
	_, err = req.ToAuthRequest()
	assert.Error(t, err)
}

func TestStockBalanceRequest_ParseAsOf(t *testing.T) {
	asOf, err := StockBalanceRequest{}.ParseAsOf()
	require.NoError(t, err)
	assert.Nil(t, asOf)

	asOf, err = StockBalanceRequest{AsOf: "2024-03-31"}.ParseAsOf()
	require.NoError(t, err)
	require.NotNil(t, asOf)
	assert.Equal(t, "2024-03-31", types.FormatDate(*asOf))
}
