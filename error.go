// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import "github.com/cockroachdb/errors"

// ErrInvalidNodeID is returned when an operation names a node that is not
// present in the tree. Use errors.Is to test for it; returned errors wrap it
// with the operation and the offending id.
var ErrInvalidNodeID = errors.New("arbor: invalid node id")

func invalidNodeID(op string, id NodeID) error {
	return errors.Wrapf(ErrInvalidNodeID, "%s %s", errors.Safe(op), id)
}
