/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package netaction performs the side effects of the network-lock and
// network-unlock phases: enter the target container's network namespace,
// find the interface carrying its default route, and flip its
// administrative state before the barrier RPC is sent.
package netaction

import (
	"runtime"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"

	liberr "github.com/behouba/criu-coordinator/errors"
)

// Toggle flips the administrative state of the default-route interface
// inside the network namespace of the process identified by pid. up=false
// implements network-lock (link down), up=true implements network-unlock
// (link up). Per §4.5, this runs synchronously and completes before the
// hook sends its barrier request for the phase.
func Toggle(pid int, up bool) liberr.Error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	origin, err := netns.Get()
	if err != nil {
		return ErrorNamespaceEnter.Error(err)
	}
	defer origin.Close()

	target, err := netns.GetFromPid(pid)
	if err != nil {
		return ErrorNamespaceEnter.Error(err)
	}
	defer target.Close()

	if err := netns.Set(target); err != nil {
		return ErrorNamespaceEnter.Error(err)
	}
	defer func() {
		_ = netns.Set(origin)
	}()

	link, err := defaultRouteLink()
	if err != nil {
		return ErrorInterfaceDiscovery.Error(err)
	}

	if up {
		err = netlink.LinkSetUp(link)
	} else {
		err = netlink.LinkSetDown(link)
	}
	if err != nil {
		return ErrorLinkToggle.Error(err)
	}

	return nil
}

// defaultRouteLink returns the link carrying the default route (Dst == nil)
// of the current network namespace, per §4.5's "default-route interface
// discovery". Ties among multiple default routes resolve to the first one
// netlink reports.
func defaultRouteLink() (netlink.Link, error) {
	routes, err := netlink.RouteList(nil, netlink.FAMILY_ALL)
	if err != nil {
		return nil, err
	}

	for _, r := range routes {
		if r.Dst != nil {
			continue
		}

		link, lerr := netlink.LinkByIndex(r.LinkIndex)
		if lerr != nil {
			return nil, lerr
		}

		return link, nil
	}

	return nil, errNoDefaultRoute{}
}

type errNoDefaultRoute struct{}

func (errNoDefaultRoute) Error() string { return "no default route found in namespace" }
