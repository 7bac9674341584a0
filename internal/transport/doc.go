// Package transport holds the listeners that feed a provisioning session: the web
// portal, a pre-configured payload and the mDNS announcement of the portal.
package transport
