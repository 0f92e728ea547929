// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants exposes whether expensive consistency checks are compiled
// in. Build with `-tags invariants` (or `-race`) to enable them.
package invariants

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// MaybePanic panics with err if invariants are enabled and err is non-nil. In
// non-invariant builds it does nothing.
func MaybePanic(err error) {
	if Enabled && err != nil {
		panic(fmt.Sprintf("%+v", errors.WithStack(err)))
	}
}
