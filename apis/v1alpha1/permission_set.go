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

import "sort"

// PermissionSet is an unordered collection of unique IAM permission
// strings. All operations return new sets, the receiver is never
// modified.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a PermissionSet from the given permissions,
// duplicates collapse.
func NewPermissionSet(permissions ...string) PermissionSet {
	s := make(PermissionSet, len(permissions))
	for _, p := range permissions {
		s[p] = struct{}{}
	}
	return s
}

// Contains reports whether p is in the set.
func (s PermissionSet) Contains(p string) bool {
	_, ok := s[p]
	return ok
}

// Union returns a new set with the permissions of both s and other.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	result := make(PermissionSet, len(s)+len(other))
	for p := range s {
		result[p] = struct{}{}
	}
	for p := range other {
		result[p] = struct{}{}
	}
	return result
}

// Difference returns a new set with the permissions of s that are not in
// other.
func (s PermissionSet) Difference(other PermissionSet) PermissionSet {
	result := make(PermissionSet)
	for p := range s {
		if _, ok := other[p]; !ok {
			result[p] = struct{}{}
		}
	}
	return result
}

// Equal reports whether s and other contain exactly the same permissions.
func (s PermissionSet) Equal(other PermissionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if _, ok := other[p]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the permissions as a sorted slice. Ordering exists only
// for stable output, it carries no meaning.
func (s PermissionSet) Sorted() []string {
	result := make([]string, 0, len(s))
	for p := range s {
		result = append(result, p)
	}
	sort.Strings(result)
	return result
}
