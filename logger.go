package img2ascii

import (
	"io"

	"github.com/sirupsen/logrus"
)

// discardLogger is the default logger for converters and rasterizers.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
