// Package qdrant provides a property index backed by a Qdrant collection
// with a geo payload index.
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/infrastructure/config"
)

// scrollPageSize bounds one scroll request.
const scrollPageSize = 256

// Repository implements ports.PropertyIndex and ports.PropertyWriter
// using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// Init creates the collection and its geo payload index if they don't
// exist. The collection carries no vectors; radius queries run entirely on
// the payload index.
func (r *Repository) Init(ctx context.Context) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		_, err = r.client.Create(ctx, &pb.CreateCollection{
			CollectionName: r.collection,
			VectorsConfig: &pb.VectorsConfig{
				Config: &pb.VectorsConfig_ParamsMap{
					ParamsMap: &pb.VectorParamsMap{Map: map[string]*pb.VectorParams{}},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("creating collection: %w", err)
		}
	}

	_, err = r.points.CreateFieldIndex(ctx, &pb.CreateFieldIndexCollection{
		CollectionName: r.collection,
		FieldName:      "location",
		FieldType:      pb.PtrOf(pb.FieldType_FieldTypeGeo),
	})
	if err != nil {
		return fmt.Errorf("creating geo index: %w", err)
	}

	return nil
}

// Upsert stores the given properties, generating IDs where missing.
func (r *Repository) Upsert(ctx context.Context, props []entities.ExistingProperty) error {
	points := make([]*pb.PointStruct, 0, len(props))

	for _, p := range props {
		pointID := p.ID
		if pointID == "" {
			pointID = uuid.New().String()
		}

		point := &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{
					Uuid: pointID,
				},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vectors{
					Vectors: &pb.NamedVectors{Vectors: map[string]*pb.Vector{}},
				},
			},
			Payload: map[string]*pb.Value{
				"name": {Kind: &pb.Value_StringValue{StringValue: p.Name}},
				"location": {Kind: &pb.Value_StructValue{StructValue: &pb.Struct{
					Fields: map[string]*pb.Value{
						"lat": {Kind: &pb.Value_DoubleValue{DoubleValue: p.Lat}},
						"lon": {Kind: &pb.Value_DoubleValue{DoubleValue: p.Lon}},
					},
				}}},
			},
		}
		points = append(points, point)
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Count returns the number of indexed properties.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	resp, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return int64(*resp.Result.PointsCount), nil
}

// FindPropertiesNear scrolls the points whose location falls within
// radiusMeters of the given coordinates.
func (r *Repository) FindPropertiesNear(ctx context.Context, lat, lon, radiusMeters float64) ([]entities.ExistingProperty, error) {
	filter := &pb.Filter{
		Must: []*pb.Condition{
			{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: "location",
						GeoRadius: &pb.GeoRadius{
							Center: &pb.GeoPoint{Lat: lat, Lon: lon},
							Radius: float32(radiusMeters),
						},
					},
				},
			},
		},
	}

	var props []entities.ExistingProperty
	var offset *pb.PointId

	for {
		resp, err := r.points.Scroll(ctx, &pb.ScrollPoints{
			CollectionName: r.collection,
			Filter:         filter,
			Limit:          pb.PtrOf(uint32(scrollPageSize)),
			Offset:         offset,
			WithPayload: &pb.WithPayloadSelector{
				SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
			},
		})
		if err != nil {
			return nil, &entities.GeoLookupError{Provider: "qdrant", Err: err}
		}

		for _, point := range resp.Result {
			props = append(props, pointToProperty(point))
		}

		if resp.NextPageOffset == nil {
			break
		}
		offset = resp.NextPageOffset
	}

	return props, nil
}

// pointToProperty converts a Qdrant point to an ExistingProperty.
func pointToProperty(point *pb.RetrievedPoint) entities.ExistingProperty {
	prop := entities.ExistingProperty{
		ID:   point.Id.GetUuid(),
		Name: getStringValue(point.Payload, "name"),
	}

	if loc, ok := point.Payload["location"]; ok {
		if s := loc.GetStructValue(); s != nil {
			prop.Lat = getDoubleValue(s.Fields, "lat")
			prop.Lon = getDoubleValue(s.Fields, "lon")
		}
	}

	return prop
}

// Helper functions for payload extraction.
func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func getDoubleValue(payload map[string]*pb.Value, key string) float64 {
	if v, ok := payload[key]; ok {
		return v.GetDoubleValue()
	}
	return 0
}
