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

package wire

import (
	"bufio"
	"encoding/json"
	"io"
)

// EOL terminates a frame. Either side may also rely on end-of-stream since a
// connection carries exactly one request and one response.
const EOL = byte('\n')

// DefaultBufferSize sizes the buffered reader used to read one frame.
const DefaultBufferSize = 32 * 1024

// Decoder reads newline-delimited JSON frames off a connection.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r with a buffered reader sized for one frame.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, DefaultBufferSize)}
}

// ReadRequest reads one JSON request, delimited by EOL or end-of-stream.
func (d *Decoder) ReadRequest() (Request, error) {
	var req Request
	line, err := d.readFrame()
	if err != nil {
		return req, err
	}

	if e := json.Unmarshal(line, &req); e != nil {
		return req, e
	}

	return req, nil
}

// ReadResponse reads one JSON response, delimited by EOL or end-of-stream.
func (d *Decoder) ReadResponse() (Response, error) {
	var resp Response
	line, err := d.readFrame()
	if err != nil {
		return resp, err
	}

	if e := json.Unmarshal(line, &resp); e != nil {
		return resp, e
	}

	return resp, nil
}

func (d *Decoder) readFrame() ([]byte, error) {
	line, err := d.r.ReadBytes(EOL)
	if err != nil && err != io.EOF {
		return nil, err
	}

	if len(line) == 0 && err == io.EOF {
		return nil, io.EOF
	}

	if n := len(line); n > 0 && line[n-1] == EOL {
		line = line[:n-1]
	}

	return line, nil
}

// Encoder writes newline-delimited JSON frames to a connection.
type Encoder struct {
	w io.Writer
}

// NewEncoder wraps w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteRequest marshals and writes req followed by EOL.
func (e *Encoder) WriteRequest(req Request) error {
	return e.write(req)
}

// WriteResponse marshals and writes resp followed by EOL.
func (e *Encoder) WriteResponse(resp Response) error {
	return e.write(resp)
}

func (e *Encoder) write(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	b = append(b, EOL)
	_, err = e.w.Write(b)
	return err
}
