package order_test

import (
	"testing"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromWire(t *testing.T) {
	tests := []struct {
		wire string
		want order.Status
	}{
		{wire: "pendiente", want: order.Pending},
		{wire: "en_proceso", want: order.InPreparation},
		{wire: "En proceso", want: order.InPreparation},
		{wire: "enviado", want: order.EnRoute},
		{wire: "entregado", want: order.Delivered},
		{wire: "cancelado", want: order.Cancelled},
		{wire: "", want: order.Pending},
		{wire: "something-new", want: order.Pending},
		{wire: " entregado ", want: order.Delivered},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			assert.Equal(t, tt.want, order.StatusFromWire(tt.wire))
		})
	}
}

func TestStatus_Wire(t *testing.T) {
	assert.Equal(t, "pendiente", order.Pending.Wire())
	assert.Equal(t, "en_proceso", order.InPreparation.Wire())
	assert.Equal(t, "enviado", order.EnRoute.Wire())
	assert.Equal(t, "entregado", order.Delivered.Wire())
	assert.Equal(t, "cancelado", order.Cancelled.Wire())
	assert.Empty(t, order.Unknown.Wire())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "EnRoute", order.EnRoute.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Pending.Validate())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_Accept(t *testing.T) {
	tests := []struct {
		from    order.Status
		wantErr bool
	}{
		{from: order.Pending},
		{from: order.InPreparation},
		{from: order.EnRoute},
		{from: order.Delivered, wantErr: true},
		{from: order.Cancelled, wantErr: true},
		{from: order.Unknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			got, err := tt.from.Accept()

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, order.Unknown, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.EnRoute, got)
		})
	}
}

func TestStatus_Deliver(t *testing.T) {
	tests := []struct {
		from    order.Status
		wantErr bool
	}{
		{from: order.Pending},
		{from: order.InPreparation},
		{from: order.EnRoute},
		{from: order.Delivered, wantErr: true},
		{from: order.Cancelled, wantErr: true},
		{from: order.Unknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			got, err := tt.from.Deliver()

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.Delivered, got)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.EnRoute.IsTerminal())
}
