package ticklogrus

import (
	"github.com/sirupsen/logrus"

	"github.com/evan-idocoding/tickkit"
)

// PanicHandler returns a tickkit.PanicHandler that logs recovered task panics
// at logrus's Error level.
//
// If logger is nil, the logrus standard logger is used.
func PanicHandler(logger *logrus.Logger) tickkit.PanicHandler {
	return func(info tickkit.PanicInfo) {
		l := logger
		if l == nil {
			l = logrus.StandardLogger()
		}
		f := logrus.Fields{"value": info.Value}
		if info.Name != "" {
			f["timer"] = info.Name
		}
		for _, t := range info.Tags {
			f[t.Key] = t.Value
		}
		if len(info.Stack) > 0 {
			f["stack"] = string(info.Stack)
		}
		l.WithFields(f).Error("timer task panicked")
	}
}
