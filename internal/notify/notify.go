// Package notify sends desktop notifications. All failures are swallowed; a
// missing notification daemon should never break a submit.
package notify

import "github.com/gen2brain/beeep"

func Send(title, message string) {
	_ = beeep.Notify(title, message, "")
}
