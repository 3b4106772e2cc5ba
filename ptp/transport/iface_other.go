//go:build !linux

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

package transport

import (
	"net"
)

// LookupInterface finds interface index and MAC address
func LookupInterface(name string) (*Interface, error) {
	links, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	ptrs := make([]*net.Interface, 0, len(links))
	for i := range links {
		ptrs = append(ptrs, &links[i])
	}
	return findByName(ptrs, name)
}
