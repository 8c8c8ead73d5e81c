package confirm

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "confirm")
