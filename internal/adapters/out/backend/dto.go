package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/order"
)

// number accepts a JSON number, a numeric string or null. Decimal fields come
// as strings from the backend. Anything else decodes as missing.
type number struct {
	value float64
	valid bool
}

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = number{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = number{}
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// The backend stores free text in some numeric columns.
		*n = number{}
		return nil //nolint:nilerr // unparsable values count as missing
	}
	*n = number{value: v, valid: true}
	return nil
}

// usable reports a finite non-zero value. Zero coordinates mean "not set".
func (n number) usable() bool {
	return n.valid && n.value != 0 && !math.IsNaN(n.value) && !math.IsInf(n.value, 0)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type companyDTO struct {
	Nombre string `json:"nombre"`
}

type loginResponse struct {
	Access            string       `json:"access"`
	Refresh           string       `json:"refresh"`
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	Role              string       `json:"role"`
	Telefono          string       `json:"telefono"`
	RepartidorModelID *int64       `json:"repartidor_model_id"`
	EmpresaNombre     string       `json:"empresaNombre"`
	Empresas          []companyDTO `json:"empresas"`
}

func (r loginResponse) companies() []string {
	var names []string
	for _, e := range r.Empresas {
		if name := strings.TrimSpace(e.Nombre); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 && strings.TrimSpace(r.EmpresaNombre) != "" {
		names = append(names, strings.TrimSpace(r.EmpresaNombre))
	}
	return names
}

type itemDTO struct {
	ProductoNombre string `json:"producto_nombre"`
	Nombre         string `json:"nombre"`
	Producto       any    `json:"producto"`
	Cantidad       number `json:"cantidad"`
	PrecioUnitario number `json:"precio_unitario"`
	Total          number `json:"total"`
}

func (i itemDTO) name() string {
	switch {
	case i.ProductoNombre != "":
		return i.ProductoNombre
	case i.Nombre != "":
		return i.Nombre
	case i.Producto != nil:
		return fmt.Sprint(i.Producto)
	default:
		return ""
	}
}

type orderDTO struct {
	ID                   int64     `json:"id"`
	ClienteNombre        string    `json:"cliente_nombre"`
	ClienteNombreUsuario string    `json:"cliente_nombre_usuario"`
	ClienteTelefono      string    `json:"cliente_telefono"`
	DireccionNombre      string    `json:"direccion_nombre"`
	DireccionCompleta    string    `json:"direccion_completa"`
	DireccionReferencia  string    `json:"direccion_referencia"`
	DireccionLatitud     number    `json:"direccion_latitud"`
	DireccionLongitud    number    `json:"direccion_longitud"`
	Total                number    `json:"total"`
	MetodoPago           string    `json:"metodo_pago"`
	FechaPedido          string    `json:"fecha_pedido"`
	Estado               string    `json:"estado"`
	Repartidor           *int64    `json:"repartidor"`
	RepartidorID         *int64    `json:"repartidor_id"`
	Items                []itemDTO `json:"items"`
}

func (d orderDTO) courier() *order.CourierID {
	for _, id := range []*int64{d.Repartidor, d.RepartidorID} {
		if id != nil && *id > 0 {
			c := order.CourierID(*id)
			return &c
		}
	}
	return nil
}

func (d orderDTO) location() *kernel.GeoPoint {
	if !d.DireccionLatitud.usable() || !d.DireccionLongitud.usable() {
		return nil
	}
	p, err := kernel.NewGeoPoint(d.DireccionLatitud.value, d.DireccionLongitud.value)
	if err != nil {
		return nil
	}
	return &p
}

func (d orderDTO) toDomain() (*order.Order, error) {
	items := make([]order.Item, 0, len(d.Items))
	for _, it := range d.Items {
		item, err := order.NewItem(it.name(), int(it.Cantidad.value), it.PrecioUnitario.value, it.Total.value)
		if err != nil {
			return nil, fmt.Errorf("order %d item %q: %w", d.ID, it.name(), err)
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.ID(d.ID), order.StatusFromWire(d.Estado), d.courier(), order.Details{
		Customer: order.Customer{
			Name:     d.ClienteNombre,
			Username: d.ClienteNombreUsuario,
			Phone:    d.ClienteTelefono,
		},
		Address: order.Address{
			Name:      d.DireccionNombre,
			Full:      d.DireccionCompleta,
			Reference: d.DireccionReferencia,
			Location:  d.location(),
		},
		Total:         d.Total.value,
		PaymentMethod: d.MetodoPago,
		OrderedAt:     parseOrderedAt(d.FechaPedido),
		Items:         items,
	})
}

// parseOrderedAt accepts the timestamp layouts the backend emits. Unknown
// layouts yield the zero time; the date is informational.
func parseOrderedAt(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type updateOrderRequest struct {
	RepartidorID int64  `json:"repartidor_id"`
	Estado       string `json:"estado"`
}

type locationRequest struct {
	Latitud  float64 `json:"latitud"`
	Longitud float64 `json:"longitud"`
}
