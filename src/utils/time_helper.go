package utils

import "time"

type TimeServiceInterface interface {
	WaitMilliseconds(milliseconds int64)
	GetNowUnix() int64
	GetNowDateTimeString() string
	GetNowDiffSeconds(unixTime int64) int64
}

type TimeHelper struct {
}

func (t *TimeHelper) WaitMilliseconds(milliseconds int64) {
	time.Sleep(time.Millisecond * time.Duration(milliseconds))
}
func (t *TimeHelper) GetNowUnix() int64 {
	return time.Now().Unix()
}
func (t *TimeHelper) GetNowDateTimeString() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
func (t *TimeHelper) GetNowDiffSeconds(unixTime int64) int64 {
	return time.Now().Unix() - unixTime
}
