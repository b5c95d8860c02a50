package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

const (
	inputNumber   = "number"
	inputPassword = "password"
)

func (i *Interpreter) input(prompt, variable, inputType string) error {
	if prompt != "" {
		if _, err := io.WriteString(i.out, prompt); err != nil {
			return wrapError(CategoryIO, err, "write prompt")
		}
	}
	var (
		text string
		err  error
	)
	if inputType == inputPassword {
		text, err = i.readSecret()
	} else {
		text, err = i.readLine()
	}
	if err != nil {
		return wrapError(CategoryInput, err, "read input for '%s'", variable)
	}
	i.ctx.Set(variable, coerceInput(text, inputType))
	return nil
}

func (i *Interpreter) readLine() (string, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret disables echo when stdin is a terminal.
func (i *Interpreter) readSecret() (string, error) {
	f, ok := i.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return i.readLine()
	}
	secret, err := term.ReadPassword(int(f.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(i.out)
	return string(secret), nil
}

// coerceInput turns numeric-looking text into an integer or float. Text
// that fails to parse stays a string.
func coerceInput(text, inputType string) runtime.Value {
	if inputType != inputNumber && !looksNumeric(text) {
		return runtime.String(text)
	}
	trimmed := strings.TrimSpace(text)
	if strings.Contains(trimmed, ".") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return runtime.Float(f)
		}
		return runtime.String(text)
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return runtime.Int(n)
	}
	return runtime.String(text)
}

func looksNumeric(text string) bool {
	stripped := strings.NewReplacer(".", "", "-", "").Replace(text)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
