package calc

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "calc")
