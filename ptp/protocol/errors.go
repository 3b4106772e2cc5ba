/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package protocol

import (
	"errors"
	"fmt"
)

// Errors returned by the codecs. They are always wrapped with some context,
// use errors.Is to check for them.
var (
	// ErrBufferTooSmall means destination buffer can't hold fixed-size encoding
	ErrBufferTooSmall = errors.New("buffer too small")
	// ErrTruncatedInput means there is less data than fixed wire size requires
	ErrTruncatedInput = errors.New("truncated input")
	// ErrOutOfRange means field value doesn't fit into its wire format width
	ErrOutOfRange = errors.New("value out of range")
)

func bufferTooSmall(what string, need, got int) error {
	return fmt.Errorf("encoding %s: need %d bytes, got %d: %w", what, need, got, ErrBufferTooSmall)
}

func truncatedInput(what string, need, got int) error {
	return fmt.Errorf("decoding %s: need %d bytes, got %d: %w", what, need, got, ErrTruncatedInput)
}
