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

package level_test

import (
	"testing"

	"github.com/sirupsen/logrus"

	loglvl "github.com/behouba/criu-coordinator/logger/level"
)

func TestParseRoundTrip(t *testing.T) {
	for _, l := range []loglvl.Level{
		loglvl.PanicLevel, loglvl.FatalLevel, loglvl.ErrorLevel,
		loglvl.WarnLevel, loglvl.InfoLevel, loglvl.DebugLevel,
	} {
		if got := loglvl.Parse(l.String()); got != l {
			t.Errorf("Parse(%q) = %v, want %v", l.String(), got, l)
		}
		if got := loglvl.Parse(l.Code()); got != l {
			t.Errorf("Parse(%q) = %v, want %v", l.Code(), got, l)
		}
	}
}

func TestParseUnknownDefaultsToInfo(t *testing.T) {
	if got := loglvl.Parse("nonsense"); got != loglvl.InfoLevel {
		t.Errorf("Parse(unknown) = %v, want InfoLevel", got)
	}
}

func TestNilLevelDisablesLogging(t *testing.T) {
	if got := loglvl.NilLevel.Logrus(); got <= logrus.TraceLevel {
		t.Errorf("NilLevel.Logrus() = %v, want a level above every logrus level", got)
	}
}
