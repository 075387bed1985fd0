// Package vkr implements the vulkan renderer.
package vkr

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"

	"github.com/devodev/toy-engine/core"
)

// NewDevice selects the first available physical device, finds a queue
// family capable of both graphics and presentation on the given surface
// and creates a logical device on it.
func NewDevice(instance core.Instance) (*Device, error) {
	devices := instance.AvailableDevices()
	if len(devices) == 0 {
		return nil, errors.New("no vulkan capable devices present")
	}

	dev := &Device{
		physicalDevice: devices[0],
		surface:        instance.Surface(),
	}

	queueIndex, err := findGraphicsQueueFamily(dev.physicalDevice, dev.surface)
	if err != nil {
		return nil, err
	}
	dev.graphicsQueueIndex = queueIndex

	requiredExtensions := []string{
		vk.KhrSwapchainExtensionName + "\x00",
	}

	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueIndex,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}

	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: requiredExtensions,
	}

	var logicalDevice vk.Device
	if err := vk.Error(vk.CreateDevice(dev.physicalDevice, &dci, nil, &logicalDevice)); err != nil {
		return nil, errors.New("vk.CreateDevice(): " + err.Error())
	}
	dev.logicalDevice = logicalDevice

	var queue vk.Queue
	vk.GetDeviceQueue(logicalDevice, queueIndex, 0, &queue)
	dev.queue = queue

	return dev, nil
}

// Device bundles the physical device, the logical device created on it
// and the single graphics queue everything is submitted to.
type Device struct {
	physicalDevice     vk.PhysicalDevice
	logicalDevice      vk.Device
	queue              vk.Queue
	surface            vk.Surface
	graphicsQueueIndex uint32
}

func findGraphicsQueueFamily(physicalDevice vk.PhysicalDevice, surface vk.Surface) (uint32, error) {
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, nil)
	if queueFamilyCount == 0 {
		return 0, errors.New("vk.GetPhysicalDeviceQueueFamilyProperties(): no queuefamilies on GPU")
	}
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, queueFamilies)

	for i := uint32(0); i < queueFamilyCount; i++ {
		queueFamilies[i].Deref()
		if queueFamilies[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) == 0 {
			continue
		}
		var supportsPresent vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(physicalDevice, i, surface, &supportsPresent)
		if supportsPresent.B() {
			return i, nil
		}
	}
	return 0, errors.New("vulkan error: could not find a queue family with graphics and present support")
}

// Get returns the logical device handle.
func (d *Device) Get() vk.Device {
	return d.logicalDevice
}

// Physical returns the physical device handle.
func (d *Device) Physical() vk.PhysicalDevice {
	return d.physicalDevice
}

// Queue returns the graphics queue.
func (d *Device) Queue() vk.Queue {
	return d.queue
}

// QueueIndex returns the graphics queue family index.
func (d *Device) QueueIndex() uint32 {
	return d.graphicsQueueIndex
}

// Surface returns the presentation surface.
func (d *Device) Surface() vk.Surface {
	return d.surface
}

// WaitIdle blocks until the device finishes all submitted work.
func (d *Device) WaitIdle() {
	vk.DeviceWaitIdle(d.logicalDevice)
}

// Destroy destroys the logical device. The physical device
// and surface belong to the instance.
func (d *Device) Destroy() {
	vk.DestroyDevice(d.logicalDevice, nil)
}
