package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func Bootstrap() {
	Log = &logrus.Logger{
		Out: os.Stdout,
		Formatter: &logrus.TextFormatter{
			FullTimestamp: true,
		},
		Level: logrus.InfoLevel,
	}

	if os.Getenv("LOG_LEVEL") == "debug" {
		Log.Level = logrus.DebugLevel
	}
}
