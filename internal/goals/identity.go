package goals

import (
	"fmt"

	"github.com/google/uuid"
)

type Kind int

const (
	// KindPending goals exist only in the local collection
	KindPending Kind = iota + 1
	// KindPersisted goals carry a server-assigned id
	KindPersisted
)

func (k Kind) String() string {
	switch k {
	case KindPending:
		return "pending"
	case KindPersisted:
		return "persisted"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const pendingPrefix = "temp_"

// Identity is either Pending(localToken) or Persisted(remoteID). The zero
// value identifies nothing.
type Identity struct {
	kind  Kind
	value string
}

// NewPendingIdentity returns a fresh local token
func NewPendingIdentity() Identity {
	return Identity{kind: KindPending, value: pendingPrefix + uuid.NewString()}
}

func PersistedIdentity(remoteID string) Identity {
	return Identity{kind: KindPersisted, value: remoteID}
}

func (id Identity) Kind() Kind {
	return id.kind
}

func (id Identity) IsZero() bool {
	return id.kind == 0
}

func (id Identity) Token() (string, bool) {
	if id.kind != KindPending {
		return "", false
	}
	return id.value, true
}

func (id Identity) RemoteID() (string, bool) {
	if id.kind != KindPersisted {
		return "", false
	}
	return id.value, true
}

// String returns the token or the remote id
func (id Identity) String() string {
	return id.value
}
