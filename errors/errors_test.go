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

package errors_test

import (
	"fmt"
	"testing"

	. "github.com/behouba/criu-coordinator/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestErrors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "errors suite")
}

const (
	testCodeA CodeError = iota + 9000
	testCodeB
)

func testMessage(code CodeError) string {
	switch code {
	case testCodeA:
		return "test code a"
	case testCodeB:
		return "test code b"
	}

	return ""
}

var _ = Describe("CodeError", func() {
	BeforeEach(func() {
		if !ExistInMapMessage(testCodeA) {
			RegisterIdFctMessage(testCodeA, testMessage)
		}
	})

	It("renders the registered message with its numeric code", func() {
		err := testCodeA.Error(nil)
		Expect(err.Error()).To(Equal("[9000] test code a"))
	})

	It("appends a wrapped cause to the rendered message", func() {
		err := testCodeA.Error(fmt.Errorf("boom"))
		Expect(err.Error()).To(Equal("[9000] test code a: boom"))
	})

	It("falls back to a placeholder message for an unregistered code", func() {
		var unregistered CodeError = 65000
		Expect(unregistered.Error(nil).Error()).To(Equal("[65000] unregistered error"))
	})

	It("reports IsCode true for its own code and any added cause's code", func() {
		err := testCodeA.Error(nil)
		Expect(err.IsCode(testCodeA)).To(BeTrue())
		Expect(err.IsCode(testCodeB)).To(BeFalse())

		err.Add(testCodeB.Error(nil))
		Expect(err.IsCode(testCodeB)).To(BeTrue())
	})
})
