// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import "time"

// stampPublished returns the publishedAt value after a status change from
// prev to next. The stamp is taken on the first entry into the visible
// state and never moved afterwards.
func stampPublished[S comparable](prev, next, visible S, current *time.Time, now time.Time) *time.Time {
	if current != nil {
		return current
	}
	if next == visible && prev != visible {
		t := now.UTC()
		return &t
	}
	return nil
}
