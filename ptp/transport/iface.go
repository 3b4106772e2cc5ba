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
	"errors"
	"fmt"
	"net"
)

// ErrNoSuchInterface is returned when interface lookup finds nothing
var ErrNoSuchInterface = errors.New("no such interface")

// Interface describes where to send the frame from
type Interface struct {
	Name         string
	Index        int
	HardwareAddr net.HardwareAddr
}

func (i *Interface) String() string {
	return fmt.Sprintf("%s (index %d, %s)", i.Name, i.Index, i.HardwareAddr)
}

// fromNet converts net.Interface, we can only send from Ethernet interfaces
func fromNet(ifi *net.Interface) (*Interface, error) {
	if len(ifi.HardwareAddr) != 6 {
		return nil, fmt.Errorf("interface %s has no ethernet address", ifi.Name)
	}
	return &Interface{
		Name:         ifi.Name,
		Index:        ifi.Index,
		HardwareAddr: ifi.HardwareAddr,
	}, nil
}

func findByName(links []*net.Interface, name string) (*Interface, error) {
	for _, l := range links {
		if l.Name == name {
			return fromNet(l)
		}
	}
	return nil, fmt.Errorf("interface %q: %w", name, ErrNoSuchInterface)
}
