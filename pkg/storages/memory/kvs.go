package memory

import (
	"sync"
	"time"
)

// CeilTimeUpToMicroseconds keeps timestamps comparable with file systems that store microseconds.
func CeilTimeUpToMicroseconds(timeToCeil time.Time) time.Time {
	if timeToCeil.Nanosecond()%1000 != 0 {
		timeToCeil = timeToCeil.Add(time.Microsecond)
		timeToCeil = timeToCeil.Add(-time.Duration(timeToCeil.Nanosecond() % 1000))
	}
	return timeToCeil
}

type TimeStampedData struct {
	Data      []byte
	Timestamp time.Time
}

func (value TimeStampedData) Size() int64 {
	return int64(len(value.Data))
}

// KVS is supposed to be used for tests. It doesn't guarantee data safety!
type KVS struct {
	underlying *sync.Map
	timeNow    func() time.Time
}

func NewKVS(opts ...func(*KVS)) *KVS {
	s := &KVS{underlying: &sync.Map{}, timeNow: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func WithCustomTime(timeNow func() time.Time) func(*KVS) {
	return func(s *KVS) {
		s.timeNow = timeNow
	}
}

func (storage *KVS) Load(key string) (value TimeStampedData, exists bool) {
	valueInterface, ok := storage.underlying.Load(key)
	if !ok {
		return TimeStampedData{}, ok
	}
	return valueInterface.(TimeStampedData), ok
}

// Store keeps data as is; callers must not modify it afterwards.
func (storage *KVS) Store(key string, data []byte) {
	storage.underlying.Store(key, TimeStampedData{data, CeilTimeUpToMicroseconds(storage.timeNow())})
}

func (storage *KVS) Delete(key string) {
	storage.underlying.Delete(key)
}

func (storage *KVS) Range(callback func(key string, value TimeStampedData) bool) {
	storage.underlying.Range(func(iKey, iValue interface{}) bool {
		return callback(iKey.(string), iValue.(TimeStampedData))
	})
}
