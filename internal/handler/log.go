package handler

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "handler")
