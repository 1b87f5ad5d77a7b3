/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package logger

import (
	"context"
	"io"
	"os"
	"sync"

	libfld "github.com/behouba/criu-coordinator/logger/fields"
	loglvl "github.com/behouba/criu-coordinator/logger/level"
	"github.com/sirupsen/logrus"
)

type logger struct {
	mu  sync.RWMutex
	ctx context.Context
	log *logrus.Logger
	fld libfld.Fields
}

func newLogger(ctx context.Context) *logger {
	if ctx == nil {
		ctx = context.Background()
	}

	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(loglvl.InfoLevel.Logrus())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &logger{
		ctx: ctx,
		log: l,
		fld: libfld.New(ctx),
	}
}

func (o *logger) Write(p []byte) (n int, err error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.log.Out.Write(p)
}

func (o *logger) Close() error {
	if c, ok := o.log.Out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (o *logger) SetLevel(lvl loglvl.Level) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.log.SetLevel(lvl.Logrus())
}

func (o *logger) GetLevel() loglvl.Level {
	o.mu.RLock()
	defer o.mu.RUnlock()

	cur := o.log.GetLevel()
	for _, l := range []loglvl.Level{
		loglvl.PanicLevel, loglvl.FatalLevel, loglvl.ErrorLevel,
		loglvl.WarnLevel, loglvl.InfoLevel, loglvl.DebugLevel, loglvl.NilLevel,
	} {
		if l.Logrus() == cur {
			return l
		}
	}

	return loglvl.InfoLevel
}

func (o *logger) SetOutput(w io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.log.SetOutput(w)
}

func (o *logger) SetFields(f libfld.Fields) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fld = f
}

func (o *logger) GetFields() libfld.Fields {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.fld
}

func (o *logger) Clone() Logger {
	o.mu.RLock()
	defer o.mu.RUnlock()

	n := &logger{
		ctx: o.ctx,
		log: o.log,
	}

	if o.fld != nil {
		n.fld = o.fld.Clone()
	} else {
		n.fld = libfld.New(o.ctx)
	}

	return n
}

func (o *logger) entry(data interface{}) *logrus.Entry {
	o.mu.RLock()
	fld := o.fld
	o.mu.RUnlock()

	fields := logrus.Fields{}
	if fld != nil {
		fields = fld.Logrus()
	}
	if data != nil {
		fields["data"] = data
	}

	return o.log.WithFields(fields)
}

func (o *logger) log_(lvl loglvl.Level, message string, data interface{}, args ...interface{}) {
	o.entry(data).Logf(lvl.Logrus(), message, args...)
}

func (o *logger) Debug(message string, data interface{}, args ...interface{}) {
	o.log_(loglvl.DebugLevel, message, data, args...)
}

func (o *logger) Info(message string, data interface{}, args ...interface{}) {
	o.log_(loglvl.InfoLevel, message, data, args...)
}

func (o *logger) Warning(message string, data interface{}, args ...interface{}) {
	o.log_(loglvl.WarnLevel, message, data, args...)
}

func (o *logger) Error(message string, data interface{}, args ...interface{}) {
	o.log_(loglvl.ErrorLevel, message, data, args...)
}

func (o *logger) Fatal(message string, data interface{}, args ...interface{}) {
	o.log_(loglvl.FatalLevel, message, data, args...)
}

func (o *logger) CheckError(errLevel, okLevel loglvl.Level, message string, e error) bool {
	if e != nil {
		o.log_(errLevel, "%s: %s", e, message, e.Error())
		return true
	}

	if okLevel != loglvl.NilLevel {
		o.log_(okLevel, "%s", nil, message)
	}

	return false
}
