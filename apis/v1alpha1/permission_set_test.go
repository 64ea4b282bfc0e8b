// Copyright 2024 The Authors (see AUTHORS file)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v1alpha1

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPermissionSet(t *testing.T) {
	t.Parallel()

	got := NewPermissionSet(
		"bigquery.tables.getData",
		"bigquery.jobs.create",
		"bigquery.tables.getData",
	)
	want := []string{"bigquery.jobs.create", "bigquery.tables.getData"}
	if diff := cmp.Diff(want, got.Sorted()); diff != "" {
		t.Errorf("NewPermissionSet got diff (-want, +got):\n%s", diff)
	}
}

func TestPermissionSetDifference(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		s    PermissionSet
		o    PermissionSet
		want []string
	}{
		{
			name: "disjoint",
			s:    NewPermissionSet("a.b.c", "d.e.f"),
			o:    NewPermissionSet("g.h.i"),
			want: []string{"a.b.c", "d.e.f"},
		},
		{
			name: "overlap",
			s:    NewPermissionSet("a.b.c", "d.e.f"),
			o:    NewPermissionSet("d.e.f"),
			want: []string{"a.b.c"},
		},
		{
			name: "subset",
			s:    NewPermissionSet("a.b.c"),
			o:    NewPermissionSet("a.b.c", "d.e.f"),
			want: []string{},
		},
		{
			name: "empty_receiver",
			s:    NewPermissionSet(),
			o:    NewPermissionSet("a.b.c"),
			want: []string{},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, tc.s.Difference(tc.o).Sorted()); diff != "" {
				t.Errorf("Difference got diff (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestPermissionSetUnion(t *testing.T) {
	t.Parallel()

	s := NewPermissionSet("a.b.c")
	o := NewPermissionSet("d.e.f", "a.b.c")
	want := []string{"a.b.c", "d.e.f"}
	if diff := cmp.Diff(want, s.Union(o).Sorted()); diff != "" {
		t.Errorf("Union got diff (-want, +got):\n%s", diff)
	}

	// The receiver must not be modified.
	if diff := cmp.Diff([]string{"a.b.c"}, s.Sorted()); diff != "" {
		t.Errorf("Union modified the receiver (-want, +got):\n%s", diff)
	}
}

func TestPermissionSetEqual(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		s    PermissionSet
		o    PermissionSet
		want bool
	}{
		{
			name: "equal_regardless_of_order",
			s:    NewPermissionSet("a.b.c", "d.e.f"),
			o:    NewPermissionSet("d.e.f", "a.b.c"),
			want: true,
		},
		{
			name: "both_empty",
			s:    NewPermissionSet(),
			o:    NewPermissionSet(),
			want: true,
		},
		{
			name: "different_size",
			s:    NewPermissionSet("a.b.c"),
			o:    NewPermissionSet("a.b.c", "d.e.f"),
			want: false,
		},
		{
			name: "same_size_different_members",
			s:    NewPermissionSet("a.b.c"),
			o:    NewPermissionSet("d.e.f"),
			want: false,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.s.Equal(tc.o); got != tc.want {
				t.Errorf("Equal got %t, want %t", got, tc.want)
			}
		})
	}
}
