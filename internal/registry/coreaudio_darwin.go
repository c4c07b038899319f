//go:build darwin && cgo

package registry

/*
#cgo LDFLAGS: -framework CoreAudio -framework CoreFoundation

#include <CoreAudio/CoreAudio.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>

static const AudioObjectPropertyAddress devicesAddr = {
	kAudioHardwarePropertyDevices,
	kAudioObjectPropertyScopeGlobal,
	kAudioObjectPropertyElementMain
};

static const AudioObjectPropertyAddress defaultOutputAddr = {
	kAudioHardwarePropertyDefaultOutputDevice,
	kAudioObjectPropertyScopeGlobal,
	kAudioObjectPropertyElementMain
};

static OSStatus sa_devices_size(UInt32 *size) {
	*size = 0;
	return AudioObjectGetPropertyDataSize(kAudioObjectSystemObject, &devicesAddr, 0, NULL, size);
}

static OSStatus sa_devices(AudioDeviceID *buf, UInt32 *size) {
	return AudioObjectGetPropertyData(kAudioObjectSystemObject, &devicesAddr, 0, NULL, size, buf);
}

static AudioDeviceID sa_default_output(void) {
	AudioDeviceID id = kAudioObjectUnknown;
	UInt32 size = sizeof(id);
	if (AudioObjectGetPropertyData(kAudioObjectSystemObject, &defaultOutputAddr, 0, NULL, &size, &id) != noErr) {
		return kAudioObjectUnknown;
	}
	return id;
}

static OSStatus sa_set_default_output(AudioDeviceID id) {
	return AudioObjectSetPropertyData(kAudioObjectSystemObject, &defaultOutputAddr, 0, NULL, sizeof(id), &id);
}

// sa_device_name returns a malloc'd UTF-8 copy of the device name sized
// exactly for the string, or NULL. The caller frees it.
static char *sa_device_name(AudioDeviceID id) {
	AudioObjectPropertyAddress addr = {
		kAudioObjectPropertyName,
		kAudioObjectPropertyScopeGlobal,
		kAudioObjectPropertyElementMain
	};
	CFStringRef name = NULL;
	UInt32 size = sizeof(name);
	if (AudioObjectGetPropertyData(id, &addr, 0, NULL, &size, &name) != noErr || name == NULL) {
		return NULL;
	}

	CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(name), kCFStringEncodingUTF8) + 1;
	char *buf = malloc(max);
	if (buf == NULL) {
		CFRelease(name);
		return NULL;
	}
	if (!CFStringGetCString(name, buf, max, kCFStringEncodingUTF8)) {
		free(buf);
		buf = NULL;
	}
	CFRelease(name);
	return buf;
}

// sa_supports_output reports whether the output stream configuration has at
// least one buffer and no buffer without channels. Failures return 0.
static int sa_supports_output(AudioDeviceID id) {
	AudioObjectPropertyAddress addr = {
		kAudioDevicePropertyStreamConfiguration,
		kAudioDevicePropertyScopeOutput,
		kAudioObjectPropertyElementMain
	};
	UInt32 size = 0;
	if (AudioObjectGetPropertyDataSize(id, &addr, 0, NULL, &size) != noErr || size == 0) {
		return 0;
	}

	AudioBufferList *list = malloc(size);
	if (list == NULL) {
		return 0;
	}
	if (AudioObjectGetPropertyData(id, &addr, 0, NULL, &size, list) != noErr) {
		free(list);
		return 0;
	}

	int ok = list->mNumberBuffers > 0;
	for (UInt32 i = 0; i < list->mNumberBuffers; i++) {
		if (list->mBuffers[i].mNumberChannels == 0) {
			ok = 0;
			break;
		}
	}
	free(list);
	return ok;
}
*/
import "C"

import (
	"unsafe"

	"github.com/777genius/switch-audio/internal/device"
	"github.com/777genius/switch-audio/internal/logging"
)

// CoreAudio reads and writes the macOS audio hardware registry.
// Device IDs are AudioDeviceIDs; kAudioObjectUnknown is 0.
type CoreAudio struct{}

// OpenCoreAudio returns the CoreAudio registry. It holds no resources.
func OpenCoreAudio() (*CoreAudio, error) {
	return &CoreAudio{}, nil
}

func (*CoreAudio) Devices() ([]device.ID, error) {
	var size C.UInt32
	if status := C.sa_devices_size(&size); status != 0 {
		return nil, &device.RegistryError{Op: "get device list size", Status: int(status)}
	}

	elem := C.UInt32(unsafe.Sizeof(C.AudioDeviceID(0)))
	count := int(size / elem)
	if count == 0 {
		return nil, nil
	}

	buf := make([]C.AudioDeviceID, count)
	if status := C.sa_devices(&buf[0], &size); status != 0 {
		return nil, &device.RegistryError{Op: "get device list", Status: int(status)}
	}
	// The list may have shrunk between the two calls.
	count = int(size / elem)

	ids := make([]device.ID, 0, count)
	for _, id := range buf[:count] {
		ids = append(ids, device.ID(id))
	}
	return ids, nil
}

func (*CoreAudio) DefaultOutput() device.ID {
	return device.ID(C.sa_default_output())
}

func (*CoreAudio) Name(id device.ID) (string, bool) {
	cname := C.sa_device_name(C.AudioDeviceID(id))
	if cname == nil {
		return "", false
	}
	defer C.free(unsafe.Pointer(cname))
	return C.GoString(cname), true
}

func (*CoreAudio) SupportsOutput(id device.ID) bool {
	return C.sa_supports_output(C.AudioDeviceID(id)) != 0
}

func (*CoreAudio) SetDefaultOutput(id device.ID) error {
	if id == device.Unknown {
		return &device.RegistryError{Op: "set default output device", Err: device.ErrNotFound}
	}
	if status := C.sa_set_default_output(C.AudioDeviceID(id)); status != 0 {
		return &device.RegistryError{Op: "set default output device", Status: int(status)}
	}
	logging.Debug("Default output set to device %d", id)
	return nil
}

func (*CoreAudio) Close() error {
	return nil
}
