package enums

// CartEvent names the mutation that produced a cart change notification.
type CartEvent string

const (
	CartEventItemAdded       CartEvent = "item_added"
	CartEventItemRemoved     CartEvent = "item_removed"
	CartEventQuantityUpdated CartEvent = "quantity_updated"
	CartEventCleared         CartEvent = "cleared"
	CartEventRestored        CartEvent = "restored"
)

// String implements fmt.Stringer.
func (e CartEvent) String() string {
	return string(e)
}
