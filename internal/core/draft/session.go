package draft

import (
	"github.com/vncsmyrnk/justask/internal/core/demo"
)

// Session ties a draft to the demo previewing it. Any edit to the draft
// resets the demo, since the previewed content changed.
type Session struct {
	Draft *Draft
	Demo  *demo.Demo
}

func NewSession(d *Draft) *Session {
	dm := demo.New(d)
	d.OnChange(dm.Reset)
	return &Session{Draft: d, Demo: dm}
}
