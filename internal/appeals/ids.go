// Package appeals implements the warning/timeout appeal lifecycle:
// appeal button -> modal -> store write -> fan-out to moderators -> decision.
package appeals

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Kinds de apelación usados como prefijo del identificador generado
const (
	KindWarnAppeal    = "WARN_APPEAL"
	KindTimeoutAppeal = "TIMEOUT_APPEAL"
)

const idCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewAppealID generates an appeal identifier of the form
// <KIND>_<epoch-ms>_<9 random base36 chars>, e.g. WARN_APPEAL_1693526400000_k3j9x2m1q
func NewAppealID(kind string) string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read sobre crypto/rand no falla en la práctica; degradar a ceros
		for i := range buf {
			buf[i] = 0
		}
	}
	for i, b := range buf {
		buf[i] = idCharset[int(b)%len(idCharset)]
	}
	return fmt.Sprintf("%s_%d_%s", kind, time.Now().UnixMilli(), string(buf))
}
