package silky_kodha_outward

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

func TestSilkyKodhaOutward_OilPercentage(t *testing.T) {
	o := &SilkyKodhaOutward{KodhaQty: types.NewMeasure(50), OilPercentage: types.NewMeasure(100)}
	o.MillID = id.New()
	o.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, o.Validate(context.Background()))

	o.OilPercentage = types.MustMeasure("100.01")
	err := o.Validate(context.Background())
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "oilPercentage", appErr.Details["field"])

	o.OilPercentage = types.NewMeasure(-1)
	assert.Error(t, o.Validate(context.Background()))
}

func TestDescriptor(t *testing.T) {
	require.NoError(t, Descriptor.Validate())
	assert.Equal(t, entity.Debit, Descriptor.Stock.Type)
	assert.Equal(t, entity.CommoditySilkyKodha, Descriptor.Stock.Commodity)

	o := &SilkyKodhaOutward{KodhaQty: types.NewMeasure(3), Rate: types.NewMeasure(7)}
	assert.Equal(t, "21", o.Amount().String())
	assert.Equal(t, "3", StockQuantity(o).String())
}
