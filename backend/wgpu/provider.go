// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a wgpu-backed graphics device provider for GPU
// painting. Embedders that do not already share a GPU device with the
// compositor can open one here from a wgpu adapter and hand it to the
// paint subsystem through the graphics metadata.
package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// GPUInfo describes the GPU behind a provider.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// Provider owns a logical wgpu device and queue and exposes them as a
// gpucontext.DeviceProvider. One provider serves a whole pipeline; the
// paint coordinator and its workers all draw through it.
type Provider struct {
	adapterID core.AdapterID
	deviceID  core.DeviceID
	queueID   core.QueueID

	device  *device
	queue   *queue
	adapter *adapter

	closeOnce sync.Once
	closeErr  error
}

// Open creates a logical device and queue on the given adapter. The
// adapter stays owned by the caller; Close only drops the device.
func Open(adapterID core.AdapterID, label string) (*Provider, error) {
	desc := &gputypes.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   gputypes.DefaultLimits(),
	}

	deviceID, err := core.RequestDevice(adapterID, desc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: failed to create device: %w", err)
	}

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return nil, fmt.Errorf("wgpu: failed to get device queue: %w", err)
	}

	p := &Provider{
		adapterID: adapterID,
		deviceID:  deviceID,
		queueID:   queueID,
	}
	p.device = &device{p: p}
	p.queue = &queue{id: queueID}
	p.adapter = &adapter{id: adapterID}
	return p, nil
}

// Device implements gpucontext.DeviceProvider.
func (p *Provider) Device() gpucontext.Device { return p.device }

// Queue implements gpucontext.DeviceProvider.
func (p *Provider) Queue() gpucontext.Queue { return p.queue }

// Adapter implements gpucontext.DeviceProvider.
func (p *Provider) Adapter() gpucontext.Adapter { return p.adapter }

// AdapterInfo implements gpucontext.DeviceProvider.
func (p *Provider) AdapterInfo() gpucontext.AdapterInfo {
	info, err := core.GetAdapterInfo(p.adapterID)
	if err != nil {
		return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
	}
	return gpucontext.AdapterInfo{
		Name: info.Name,
		Type: adapterType(info.DeviceType),
	}
}

// adapterType maps a gputypes device type to the coarser
// gpucontext.AdapterType used for render mode decisions.
func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// SurfaceFormat implements gpucontext.DeviceProvider. Paint buffers
// are 32-bpp BGRA.
func (p *Provider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// Info returns information about the GPU behind the provider.
func (p *Provider) Info() (*GPUInfo, error) {
	info, err := core.GetAdapterInfo(p.adapterID)
	if err != nil {
		return nil, fmt.Errorf("wgpu: failed to get adapter info: %w", err)
	}
	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

// CheckDeviceLimits verifies that the device is still reachable and
// returns its limits.
func (p *Provider) CheckDeviceLimits() (gputypes.Limits, error) {
	limits, err := core.GetDeviceLimits(p.deviceID)
	if err != nil {
		return gputypes.Limits{}, fmt.Errorf("wgpu: failed to get device limits: %w", err)
	}
	return limits, nil
}

// Close drops the logical device. Safe to call multiple times.
func (p *Provider) Close() error {
	p.closeOnce.Do(func() {
		if p.deviceID.IsZero() {
			return
		}
		if err := core.DeviceDrop(p.deviceID); err != nil {
			p.closeErr = fmt.Errorf("wgpu: failed to release device: %w", err)
		}
	})
	return p.closeErr
}

// device adapts a wgpu device id to gpucontext.Device.
type device struct {
	p *Provider
}

// Poll is a no-op: wgpu-core tracks queue submissions internally and
// the paint subsystem never maps buffers for readback through this
// interface.
func (d *device) Poll(wait bool) {}

// Destroy drops the device through its provider.
func (d *device) Destroy() {
	_ = d.p.Close()
}

// queue adapts a wgpu queue id to gpucontext.Queue.
type queue struct {
	id core.QueueID
}

// adapter adapts a wgpu adapter id to gpucontext.Adapter.
type adapter struct {
	id core.AdapterID
}

var _ gpucontext.DeviceProvider = (*Provider)(nil)
