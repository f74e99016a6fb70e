package config

import (
	"github.com/olibartfast/vision-infra/logging"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
