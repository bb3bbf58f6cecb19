// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
)

var (
	// ErrInvalidICEServer indicates an ICE server URL could not be parsed.
	ErrInvalidICEServer = errors.New("invalid ICE server URL")

	// ErrModuleClosed indicates the Module has been closed.
	ErrModuleClosed = errors.New("native module closed")

	errUnknownPeerConnection = errors.New("unknown peer connection")
)
