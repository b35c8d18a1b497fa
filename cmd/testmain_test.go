package cmd

import (
	"os"
	"testing"

	"github.com/uvizhe/psh-gui/log"
)

func TestMain(m *testing.M) {
	log.Initialize(false)
	code := m.Run()
	log.Close()
	os.Exit(code)
}
