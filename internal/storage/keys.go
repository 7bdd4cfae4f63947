package storage

import (
	"fmt"
	"strings"
)

// KeyKind names the family a key belongs to.
type KeyKind string

const (
	KindBill        KeyKind = "bill"
	KindBillCounter KeyKind = "bill_counter"
	KindAccount     KeyKind = "account"
)

// Key addresses one record in a KeyedStore.
type Key struct {
	Kind KeyKind
	ID   uint32
	Name string
}

// BillKey addresses the bill with the given id.
func BillKey(id uint32) Key {
	return Key{Kind: KindBill, ID: id}
}

// BillCounterKey addresses the last assigned bill id.
func BillCounterKey() Key {
	return Key{Kind: KindBillCounter}
}

// AccountKey addresses a login account by email.
func AccountKey(email string) Key {
	return Key{Kind: KindAccount, Name: strings.ToLower(email)}
}

// String renders the key in the form stores persist it under,
// e.g. "bill/0000000007", "bill_counter", "account/a@example.com".
// Bill ids are zero padded so keys sort in id order.
func (k Key) String() string {
	switch k.Kind {
	case KindBill:
		return fmt.Sprintf("%s/%010d", k.Kind, k.ID)
	case KindBillCounter:
		return string(k.Kind)
	default:
		return string(k.Kind) + "/" + k.Name
	}
}

// Bytes is String as a byte slice, for byte-keyed stores.
func (k Key) Bytes() []byte {
	return []byte(k.String())
}
