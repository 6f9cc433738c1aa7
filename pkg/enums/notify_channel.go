package enums

// NotifyChannel names a customer delivery channel.
type NotifyChannel string

const (
	NotifyChannelEmail    NotifyChannel = "email"
	NotifyChannelWhatsApp NotifyChannel = "whatsapp"
	NotifyChannelSMS      NotifyChannel = "sms"
)

// String implements fmt.Stringer.
func (c NotifyChannel) String() string {
	return string(c)
}
