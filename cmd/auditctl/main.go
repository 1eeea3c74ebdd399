// Command auditctl roda a auditoria de anúncios RSA localmente, sem servidor nem banco
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
