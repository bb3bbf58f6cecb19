// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

// BinaryType is the representation of received binary messages.
type BinaryType string

// BinaryTypeArrayBuffer delivers binary messages as raw byte buffers. It is
// the only representation the bridge supports.
const BinaryTypeArrayBuffer BinaryType = "arraybuffer"

func (b BinaryType) String() string {
	return string(b)
}
